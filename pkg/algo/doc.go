// Package algo calls remote algorithms and implements the payload model they
// exchange.
//
// A Payload is Text, Binary or JSON. Pipe sends one to an algorithm and
// returns a Response whose Result is again a Payload, so calls can be chained:
//
//	hello := algo.NewAlgorithm(client, "demo/Hello")
//	resp, err := hello.Pipe(ctx, algo.Text("world"))
//	if err != nil {
//		return err
//	}
//	next, err := other.Pipe(ctx, resp.Result)
//
// Handler and Apply are used on the other side, by code that implements an
// algorithm.
package algo
