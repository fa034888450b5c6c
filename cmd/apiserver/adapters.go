package main

import "context"

// componentChecker adapts an infrastructure ping function to the health
// handler's checker contract.
type componentChecker struct {
	name  string
	check func(ctx context.Context) error
}

func (c componentChecker) Name() string                    { return c.name }
func (c componentChecker) Check(ctx context.Context) error { return c.check(ctx) }
