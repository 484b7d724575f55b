package application

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
