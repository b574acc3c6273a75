package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/account/domain"
	"github.com/opencampus/opencampus/internal/account/password"
	"github.com/opencampus/opencampus/internal/clock"
	"github.com/opencampus/opencampus/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Account{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.Account{}, domain.ErrInvalidPassword
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.Account{}, err
	}

	now := s.clock.Now()
	account := domain.Account{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &account); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Account{}, domain.ErrEmailExists
		}
		return domain.Account{}, err
	}

	s.log.Info("account registered", zap.String("account_id", account.ID.String()))
	return account, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return *account, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		account.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return domain.Account{}, domain.ErrInvalidEmail
		}
		account.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return domain.Account{}, domain.ErrInvalidPassword
		}
		hash, err := password.Hash(req.Password)
		if err != nil {
			return domain.Account{}, err
		}
		account.PasswordHash = hash
	}
	account.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, account); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Account{}, domain.ErrEmailExists
		}
		return domain.Account{}, err
	}
	return *account, nil
}

func (s *Service) Suspend(ctx context.Context, id snowflake.ID, days int) (domain.Account, error) {
	if days <= 0 {
		return domain.Account{}, domain.ErrInvalidDays
	}

	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}

	until := s.clock.Now().Add(time.Duration(days) * 24 * time.Hour)
	account.SuspendedUntil = &until
	account.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, account); err != nil {
		return domain.Account{}, err
	}

	s.log.Warn("account suspended",
		zap.String("account_id", account.ID.String()),
		zap.Time("until", until),
	)
	return *account, nil
}
