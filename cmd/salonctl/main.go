package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-manager/internal/db"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/logger"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	ucSpecialty "github.com/BruksfildServices01/salon-manager/internal/usecase/specialty"
	ucUser "github.com/BruksfildServices01/salon-manager/internal/usecase/user"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env carrega config, banco e auditoria para um comando.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	audit *audit.Dispatcher
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(os.Stderr, cfg.LogLevel, "console")

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		log:   log,
		db:    db,
		audit: audit.NewDispatcher(audit.New(db), log, cfg.AuditQueueSize),
	}, nil
}

func (e *env) close() {
	e.audit.Close()
	_ = e.log.Sync()
}

func (e *env) provider(ctx context.Context) (identity.Provider, error) {
	if e.cfg.AuthProvider == config.AuthProviderFirebase {
		client, err := identity.InitializeFirebase(ctx, e.cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return identity.NewFirebase(client, infraRepo.NewUserGormRepository(e.db)), nil
	}
	// CreateAccount local não consulta sessões
	return identity.NewLocal(e.cfg.JWTSecret, nil), nil
}

var rootCmd = &cobra.Command{
	Use:           "salonctl",
	Short:         "salon manager admin tasks",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// ======================================================
// create-admin
// ======================================================

var adminFlags struct {
	name            string
	email           string
	password        string
	skipDomainCheck bool
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "cria o primeiro administrador do salão",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		provider, err := e.provider(ctx)
		if err != nil {
			return err
		}

		var checkDomain ucUser.DomainChecker
		if adminFlags.skipDomainCheck {
			checkDomain = func(string) bool { return true }
		}

		create := ucUser.NewCreateUser(
			infraRepo.NewUserGormRepository(e.db),
			provider,
			checkDomain,
			e.audit,
			e.log,
		)

		u, err := create.Execute(ctx, ucUser.CreateUserInput{
			Name:     adminFlags.name,
			Email:    adminFlags.email,
			Password: adminFlags.password,
			Role:     role.Admin.String(),
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin created: %s <%s>\n", u.ID, u.Email)
		return nil
	},
}

// ======================================================
// recount-specialties
// ======================================================

var recountCmd = &cobra.Command{
	Use:   "recount-specialties",
	Short: "recalcula o número de estilistas ativos por especialidade",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		recount := ucSpecialty.NewRecountSpecialties(infraRepo.NewSpecialtyGormRepository(e.db), e.audit)
		counts, err := recount.Execute(cmd.Context(), "")
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", id, counts[id])
		}
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.name, "name", "", "nome do administrador")
	f.StringVar(&adminFlags.email, "email", "", "e-mail de login")
	f.StringVar(&adminFlags.password, "password", "", "senha inicial (mínimo 6 caracteres)")
	f.BoolVar(&adminFlags.skipDomainCheck, "skip-domain-check", false, "não consulta o DNS do domínio do e-mail")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createAdminCmd, recountCmd)
}
