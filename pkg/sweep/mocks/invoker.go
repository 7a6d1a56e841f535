package mocks

import context "context"
import httperf "github.com/dowlandaiello/hw4-analysis/pkg/httperf"
import mock "github.com/stretchr/testify/mock"

// Invoker is an autogenerated mock type for the Invoker type
type Invoker struct {
	mock.Mock
}

// Invoke provides a mock function with given fields: ctx, server, port, query, kind
func (_m *Invoker) Invoke(ctx context.Context, server string, port uint16, query string, kind httperf.Kind) (string, error) {
	ret := _m.Called(ctx, server, port, query, kind)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, uint16, string, httperf.Kind) string); ok {
		r0 = rf(ctx, server, port, query, kind)
	} else {
		r0 = ret.Get(0).(string)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, uint16, string, httperf.Kind) error); ok {
		r1 = rf(ctx, server, port, query, kind)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
