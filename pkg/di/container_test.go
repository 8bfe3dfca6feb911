package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssargent/binsave/pkg/api"
)

type stubStarter struct{ started bool }

func (s *stubStarter) StartServer(ctx context.Context, session api.RecordSession, config api.ServerConfig) error {
	s.started = true
	return nil
}

type stubServerFactory struct{ starter *stubStarter }

func (f *stubServerFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestNewContainer(t *testing.T) {
	container := NewContainer()

	assert.NotNil(t, container.GetSessionFactory())
	assert.NotNil(t, container.GetServerFactory())
	assert.IsType(t, &api.DefaultServerStarter{}, container.GetServerFactory().CreateServerStarter())
}

func TestContainer_Overrides(t *testing.T) {
	container := NewContainer()
	starter := &stubStarter{}
	container.SetServerFactory(&stubServerFactory{starter: starter})

	err := container.GetServerFactory().CreateServerStarter().StartServer(context.Background(), nil, api.ServerConfig{})
	assert.NoError(t, err)
	assert.True(t, starter.started)

	container.SetSessionFactory(nil)
	assert.Nil(t, container.GetSessionFactory())
}
