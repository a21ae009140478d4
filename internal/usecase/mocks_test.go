package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

var (
	testContractHex = strings.Repeat("ab", 32)
	testContract    = func() [32]byte {
		var h [32]byte
		for i := range h {
			h[i] = 0xab
		}
		return h
	}()
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boundContract() *usecase.ContractBinding {
	b, _ := usecase.NewContractBinding(&config.RuntimeConfig{})
	if _, err := b.SetContractHash("hash-"+testContractHex, ""); err != nil {
		panic(err)
	}
	return b
}

func unboundContract() *usecase.ContractBinding {
	b, _ := usecase.NewContractBinding(&config.RuntimeConfig{})
	return b
}

// MockStateQuerier is a mock implementation of StateQuerier
type MockStateQuerier struct {
	mock.Mock
}

func (m *MockStateQuerier) StateRootHash(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStateQuerier) QueryContractValue(ctx context.Context, stateRoot string, contract [32]byte, path []string) (clvalue.Value, error) {
	args := m.Called(ctx, stateRoot, contract, path)
	return args.Get(0).(clvalue.Value), args.Error(1)
}

func (m *MockStateQuerier) QueryDictionaryItem(ctx context.Context, stateRoot string, contract [32]byte, dictionary, itemKey string) (clvalue.Value, error) {
	args := m.Called(ctx, stateRoot, contract, dictionary, itemKey)
	return args.Get(0).(clvalue.Value), args.Error(1)
}

// onItem stubs one config read under state root "root"
func (m *MockStateQuerier) onItem(item domain.ConfigItem, v clvalue.Value, err error) *mock.Call {
	return m.On("QueryContractValue", mock.Anything, "root", testContract, []string{string(item)}).Return(v, err)
}

// MockSubmitter is a mock implementation of DeploySubmitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) PutDeploy(ctx context.Context, deploy *domain.Deploy) (string, error) {
	args := m.Called(ctx, deploy)
	return args.String(0), args.Error(1)
}

// MockSigner is a mock implementation of Signer
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) PublicKey() (domain.PublicKey, error) {
	args := m.Called()
	return args.Get(0).(domain.PublicKey), args.Error(1)
}

func (m *MockSigner) Sign(ctx context.Context, hash [32]byte) (domain.Approval, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(domain.Approval), args.Error(1)
}

// MockProgramStore is a mock implementation of ProgramStore
type MockProgramStore struct {
	mock.Mock
}

func (m *MockProgramStore) Load(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// MockNodeProber is a mock implementation of NodeProber
type MockNodeProber struct {
	mock.Mock
}

func (m *MockNodeProber) Probe(ctx context.Context, nodeURL string) (string, error) {
	args := m.Called(ctx, nodeURL)
	return args.String(0), args.Error(1)
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// recordingProgress collects progress events
type recordingProgress struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (r *recordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingProgress) Info(message string) {
	r.infos = append(r.infos, message)
}

func (r *recordingProgress) Error(message string) {
	r.errors = append(r.errors, message)
}
