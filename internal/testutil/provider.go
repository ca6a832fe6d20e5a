package testutil

import (
	"context"
	"time"

	"teamcap/internal/capacity"
)

// StubProvider is an in-memory capacity.Provider. Populate the fields with
// canned data and set the error fields to force failures. Call counters let
// tests assert how often each endpoint was hit.
type StubProvider struct {
	Employees []capacity.Employee
	Requests  []capacity.TimeOffRequest
	Out       []capacity.OutOfOffice

	DirectoryErr error
	RequestsErr  error
	WhosOutErr   error

	DirectoryCalls int
	RequestsCalls  int
	WhosOutCalls   int
}

func (p *StubProvider) Directory(ctx context.Context) ([]capacity.Employee, error) {
	p.DirectoryCalls++
	if p.DirectoryErr != nil {
		return nil, p.DirectoryErr
	}
	return p.Employees, nil
}

func (p *StubProvider) TimeOffRequests(ctx context.Context, start, end time.Time) ([]capacity.TimeOffRequest, error) {
	p.RequestsCalls++
	if p.RequestsErr != nil {
		return nil, p.RequestsErr
	}
	return p.Requests, nil
}

func (p *StubProvider) WhosOut(ctx context.Context, start, end time.Time) ([]capacity.OutOfOffice, error) {
	p.WhosOutCalls++
	if p.WhosOutErr != nil {
		return nil, p.WhosOutErr
	}
	return p.Out, nil
}

// Compile-time check that StubProvider implements capacity.Provider.
var _ capacity.Provider = (*StubProvider)(nil)
