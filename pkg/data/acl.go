package data

import (
	"fmt"
	"strings"
)

// ACL holds the permissions of a directory.
type ACL struct {
	// Read lists the principals allowed to read, e.g. "user://*".
	Read []string `json:"read"`
}

// ReadACL is a predefined read permission.
type ReadACL int

const (
	// Private is readable only by the owner.
	Private ReadACL = iota
	// MyAlgorithms is readable by the owner's algorithms, regardless of caller.
	MyAlgorithms
	// Public is readable by any user.
	Public
)

// ACL expands the predefined permission.
func (r ReadACL) ACL() ACL {
	switch r {
	case MyAlgorithms:
		return ACL{Read: []string{"algo://.my/*"}}
	case Public:
		return ACL{Read: []string{"user://*"}}
	default:
		return ACL{Read: []string{}}
	}
}

func (r ReadACL) String() string {
	switch r {
	case MyAlgorithms:
		return "my_algos"
	case Public:
		return "public"
	default:
		return "private"
	}
}

// ParseReadACL parses the name of a predefined permission as printed by
// ReadACL.String.
func ParseReadACL(s string) (ReadACL, error) {
	switch strings.ToLower(s) {
	case "private":
		return Private, nil
	case "my_algos", "myalgorithms", "my_algorithms":
		return MyAlgorithms, nil
	case "public":
		return Public, nil
	default:
		return Private, fmt.Errorf("unknown acl %q: must be one of private, my_algos or public", s)
	}
}

// DefaultACL returns the permission used when none is given: readable by the
// owner's algorithms.
func DefaultACL() ACL {
	return MyAlgorithms.ACL()
}
