package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tasker/config"
	"tasker/internal/domain/repository"
	"tasker/internal/domain/validation"
	"tasker/internal/infra/auth"
	"tasker/internal/infra/persistence/memory"
	mockSvc "tasker/internal/mocks/service"
	"tasker/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serviceFixtures wires the services over an in-memory store.
type serviceFixtures struct {
	store       *memory.Store
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	sessionRepo repository.SessionRepository
	notifier    *mockSvc.MockNotifier
	users       usecase.UserUsecase
	sessions    usecase.SessionUsecase
	tasks       usecase.TaskUsecase
}

func newServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	fx := &serviceFixtures{
		store:       store,
		txManager:   memory.NewTransactionManager(store),
		userRepo:    memory.NewUserRepository(store),
		taskRepo:    memory.NewTaskRepository(store),
		sessionRepo: memory.NewSessionRepository(store),
		notifier:    mockSvc.NewMockNotifier(t),
	}
	validator := validation.New()
	logger := newDiscardLogger()

	fx.users = NewUserService(UserServiceParams{
		TxManager:    fx.txManager,
		UserRepo:     fx.userRepo,
		SessionRepo:  fx.sessionRepo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokens,
		Notifier:     fx.notifier,
		Validator:    validator,
		Logger:       logger,
	})
	fx.sessions = NewSessionService(SessionServiceParams{
		UserRepo:     fx.userRepo,
		SessionRepo:  fx.sessionRepo,
		TokenService: tokens,
		Logger:       logger,
	})
	fx.tasks = NewTaskService(TaskServiceParams{
		TaskRepo:  fx.taskRepo,
		Validator: validator,
		Logger:    logger,
	})

	return fx
}

// register creates a user and expects the welcome notification.
func (fx *serviceFixtures) register(t *testing.T, name, email string) *usecase.AuthOutput {
	t.Helper()

	fx.notifier.On("SendWelcome", mock.Anything, mock.Anything).Return(nil).Once()
	out, err := fx.users.Register(context.Background(), &usecase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: "Red12345!",
	})
	require.NoError(t, err)

	return out
}
