package testcommon

import (
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type Suite struct {
	suite.Suite
	Logger *zap.Logger
}

func (s *Suite) SetupSuite() {
	s.Logger = SetupLogger(s.T())
}

func (s *Suite) TearDownSuite() {
	_ = s.Logger.Sync()
}
