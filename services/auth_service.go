package services

import (
	"fmt"
	"log/slog"
	"strikeup/auth"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/repositories"
)

type IAuthService interface {
	Login(email, password string) (domain.Profile, error)
	Signup(req auth.SignupRequest) (domain.Profile, error)
	Logout() error
	Current() (domain.Profile, bool)
	UpgradeCredentials() (int, error)
}

type AuthService struct {
	log    *slog.Logger
	store  *repositories.Store
	hasher auth.Hasher
}

func NewAuthService(log *slog.Logger, store *repositories.Store, hasher auth.Hasher) IAuthService {
	return &AuthService{log: log, store: store, hasher: hasher}
}

// Login looks the user up by exact email and checks the password.
// Any mismatch is reported as ErrInvalidCredentials, whichever part was wrong.
func (s *AuthService) Login(email, password string) (domain.Profile, error) {
	if err := auth.ValidateLogin(auth.LoginRequest{Email: email, Password: password}); err != nil {
		return domain.Profile{}, err
	}

	user, ok := s.findByEmail(email)
	if !ok {
		return domain.Profile{}, errors.ErrInvalidCredentials
	}
	match, err := s.hasher.Compare(password, user.Credential)
	if err != nil || !match {
		return domain.Profile{}, errors.ErrInvalidCredentials
	}

	profile, err := s.store.SetCurrent(user.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	s.log.Info("User logged in", "user_id", user.ID)
	return profile, nil
}

// Signup creates the account and logs it in within one transaction.
func (s *AuthService) Signup(req auth.SignupRequest) (domain.Profile, error) {
	if err := auth.ValidateSignup(req); err != nil {
		return domain.Profile{}, err
	}
	if _, taken := s.findByEmail(req.Email); taken {
		return domain.Profile{}, errors.ErrEmailTaken
	}

	credential, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hashing failed: %w", err)
	}

	var profile domain.Profile
	err = s.store.Transaction(func() error {
		user, err := s.store.Users.Insert(domain.User{
			Name:         req.Name,
			Email:        req.Email,
			Credential:   credential,
			Location:     req.Location,
			SkillLevel:   req.SkillLevel,
			BowlingStyle: domain.DefaultBowlingStyle,
			Avatar:       domain.Initials(req.Name),
		})
		if err != nil {
			return err
		}
		profile, err = s.store.SetCurrent(user.ID)
		return err
	})
	if err != nil {
		return domain.Profile{}, err
	}
	s.log.Info("User signed up", "user_id", profile.ID)
	return profile, nil
}

func (s *AuthService) Logout() error {
	return s.store.ClearCurrent()
}

func (s *AuthService) Current() (domain.Profile, bool) {
	return s.store.Current()
}

// UpgradeCredentials hashes every credential still stored in plain text,
// as the web client writes them, in a single transaction.
// It returns the number of users upgraded.
func (s *AuthService) UpgradeCredentials() (int, error) {
	plain := s.store.Users.FindBy(func(u domain.User) bool { return !auth.IsEncoded(u.Credential) })
	if len(plain) == 0 {
		return 0, nil
	}
	err := s.store.Transaction(func() error {
		for _, user := range plain {
			credential, err := s.hasher.Hash(user.Credential)
			if err != nil {
				return fmt.Errorf("hashing failed: %w", err)
			}
			_, err = s.store.Users.Update(int(user.ID), func(u *domain.User) error {
				u.Credential = credential
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("Plain-text credentials hashed", "users", len(plain))
	return len(plain), nil
}

// findByEmail matches case-sensitively.
func (s *AuthService) findByEmail(email string) (domain.User, bool) {
	users := s.store.Users.FindBy(func(u domain.User) bool { return u.Email == email })
	if len(users) == 0 {
		return domain.User{}, false
	}
	return users[0], true
}
