package auth

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	userUC "github.com/BruksfildServices01/salon-manager/internal/usecase/user"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register é o cadastro aberto do app: sempre cria um cliente.
type Register struct {
	create   *userUC.CreateUser
	sessions Sessions
	issuer   TokenIssuer
	clock    timezone.Clock
	ttl      time.Duration
}

// NewRegister recebe issuer nil quando o provedor é externo; nesse caso o
// cadastro não devolve token e o app faz login no provedor.
func NewRegister(
	create *userUC.CreateUser,
	sessions Sessions,
	issuer TokenIssuer,
	clock timezone.Clock,
	ttl time.Duration,
) *Register {
	return &Register{
		create:   create,
		sessions: sessions,
		issuer:   issuer,
		clock:    clock,
		ttl:      ttl,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	u, err := uc.create.Execute(ctx, userUC.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Role:     role.Client.String(),
	})
	if err != nil {
		return nil, err
	}

	if uc.issuer == nil {
		return &Session{User: u}, nil
	}
	return issueSession(ctx, uc.sessions, uc.issuer, u, uc.clock.Now(), uc.ttl)
}
