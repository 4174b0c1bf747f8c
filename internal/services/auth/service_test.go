package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/litfish/litgame-go/internal/dependencies/mocks"
	"github.com/litfish/litgame-go/internal/dependencies/random"
	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, random.New(), DefaultConfig())
	s.ctx = context.Background()
}

// CreateGuestPlayer tests

func (s *ServiceSuite) TestCreateGuestPlayerSucceeds() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Asha")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Asha", session.Player.DisplayName)
	s.True(session.Player.IsGuest)
	s.NotEmpty(session.PlayerID)
}

func (s *ServiceSuite) TestCreateGuestPlayerPersistsPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Asha")
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Asha", player.DisplayName)
}

func (s *ServiceSuite) TestCreateGuestPlayerRejectsBlankName() {
	_, err := s.service.CreateGuestPlayer(s.ctx, "   ")
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ServiceSuite) TestCreateGuestPlayerSessionIsValid() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Asha")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)
}

// RegisterPlayer tests

func (s *ServiceSuite) TestRegisterPlayerSucceeds() {
	session, err := s.service.RegisterPlayer(s.ctx, "asha", "hunter22", "Asha")
	s.Require().NoError(err)

	s.False(session.Player.IsGuest)

	rp, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "asha")
	s.Require().NoError(err)
	s.Equal(session.PlayerID, rp.PlayerID)
	s.NotEqual("hunter22", rp.PasswordHash)
}

func (s *ServiceSuite) TestRegisterPlayerFailsOnDuplicateUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "asha", "hunter22", "Asha")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "asha", "other", "Other")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterPlayerRejectsMissingFields() {
	_, err := s.service.RegisterPlayer(s.ctx, "", "pw", "Asha")
	s.ErrorIs(err, model.ErrInvalidInput)

	_, err = s.service.RegisterPlayer(s.ctx, "asha", "", "Asha")
	s.ErrorIs(err, model.ErrInvalidInput)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, err := s.service.RegisterPlayer(s.ctx, "asha", "hunter22", "Asha")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "asha", "hunter22")
	s.Require().NoError(err)
	s.Equal(registered.PlayerID, session.PlayerID)
	s.NotEqual(registered.Token, session.Token)
}

func (s *ServiceSuite) TestLoginFailsOnWrongPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "asha", "hunter22", "Asha")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "asha", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsOnUnknownUsername() {
	_, err := s.service.Login(s.ctx, "ghost", "pw")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session lifecycle tests

func (s *ServiceSuite) TestValidateSessionFailsOnUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Asha")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Asha")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, err := s.service.CreateGuestPlayer(s.ctx, "Asha")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.CreateGuestPlayer(s.ctx, "Bram")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
