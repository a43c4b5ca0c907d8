package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

var _ model.SecurityLayer = (*SecurityLayer)(nil)

// NewSecurityLayer creates a SecurityLayer mock that asserts its expectations on cleanup.
func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	ret := m.Called(protocol, addr)
	var l net.Listener
	if v := ret.Get(0); v != nil {
		l = v.(net.Listener)
	}
	return l, ret.Error(1)
}

// Pinger is a mock of model.Pinger.
type Pinger struct {
	mock.Mock
}

var _ model.Pinger = (*Pinger)(nil)

// NewPinger creates a Pinger mock that asserts its expectations on cleanup.
func NewPinger(t testingT) *Pinger {
	m := &Pinger{}
	register(&m.Mock, t)
	return m
}

func (m *Pinger) Ping(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}
