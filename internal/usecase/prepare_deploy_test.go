package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/runtimeargs"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

var testSender = domain.PublicKey{Algorithm: domain.AlgorithmEd25519, Raw: make([]byte, 32)}

type prepareFixture struct {
	uc       *usecase.PrepareDeploy
	signer   *MockSigner
	programs *MockProgramStore
	cfg      *config.RuntimeConfig
}

func newPrepareFixture(binding *usecase.ContractBinding) *prepareFixture {
	cfg := &config.RuntimeConfig{
		Network:  &config.Network{Name: "local", ChainName: "casper-net-1"},
		TTL:      30 * time.Minute,
		GasPrice: 1,
		Payments: config.Payments{
			"install": uint256.NewInt(250_000_000_000),
			"mint":    uint256.NewInt(2_000_000_000),
			"default": uint256.NewInt(1_000_000_000),
		},
	}
	f := &prepareFixture{
		signer:   new(MockSigner),
		programs: new(MockProgramStore),
		cfg:      cfg,
	}
	clock := fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	f.uc = usecase.NewPrepareDeploy(runtimeargs.NewBuilder(cfg), binding, f.programs, f.signer, clock, cfg, discardLogger())
	return f
}

func (f *prepareFixture) withKey() {
	f.signer.On("PublicKey").Return(testSender, nil)
	f.signer.On("Sign", mock.Anything, mock.Anything).Return(domain.Approval{
		Signer:    testSender,
		Signature: domain.Signature{Algorithm: domain.AlgorithmEd25519, Raw: make([]byte, 64)},
	}, nil)
}

func (f *prepareFixture) withoutKey() {
	f.signer.On("PublicKey").Return(domain.PublicKey{}, domain.ErrNoSigningKey)
}

func TestPrepareDeploy_Mint(t *testing.T) {
	ctx := context.Background()
	f := newPrepareFixture(boundContract())
	f.withKey()
	f.programs.On("Load", mock.Anything, "mint_call.wasm").Return([]byte{0x00, 0x61, 0x73, 0x6d}, nil)

	owner := testSender.AccountKey()
	deploy, err := f.uc.Mint(ctx, domain.MintArgs{Owner: owner, Meta: map[string]string{"color": "Blue"}}, usecase.DeployOptions{})
	require.NoError(t, err)

	require.NotNil(t, deploy.Session.ModuleBytes)
	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d}, deploy.Session.ModuleBytes.Module)
	assert.Equal(t, []string{"nft_contract_hash", "token_owner", "token_meta_data"}, deploy.Session.Args().Names())

	amount, ok := deploy.Payment.Args().Get("amount")
	require.True(t, ok)
	got, err := amount.AsU512()
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000_000), got.Uint64())

	assert.Equal(t, "casper-net-1", deploy.Header.ChainName)
	assert.Equal(t, 30*time.Minute, deploy.Header.TTL)
	assert.Equal(t, testSender, deploy.Header.Account)
	assert.Equal(t, domain.Blake2b256(deploy.Header.Bytes()), deploy.Hash)
	assert.True(t, deploy.Signed())
	f.signer.AssertCalled(t, "Sign", mock.Anything, deploy.Hash)
}

func TestPrepareDeploy_StoredEntryPoints(t *testing.T) {
	ctx := context.Background()
	id := uint64(4)

	tests := []struct {
		name       string
		call       domain.Call
		entryPoint string
	}{
		{"burn", domain.BurnCall{BurnArgs: domain.BurnArgs{TokenIdentifier: domain.ByID(id)}}, "burn"},
		{"approve", domain.ApproveCall{ApproveArgs: domain.ApproveArgs{
			TokenIdentifier: domain.ByID(id),
			Operator:        testSender.AccountKey(),
		}}, "approve"},
		{"set approval for all", domain.SetApprovalForAllCall{ApprovalForAllArgs: domain.ApprovalForAllArgs{
			ApproveAll: true,
			Operator:   testSender.AccountKey(),
		}}, "set_approval_for_all"},
		{"register owner", domain.RegisterOwnerCall{RegisterOwnerArgs: domain.RegisterOwnerArgs{
			TokenOwner: testSender.AccountKey(),
		}}, "register_owner"},
		{"set variables", domain.SetVariablesCall{}, "set_variables"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPrepareFixture(boundContract())
			f.withKey()

			deploy, err := f.uc.Execute(ctx, tt.call, usecase.DeployOptions{})
			require.NoError(t, err)

			require.NotNil(t, deploy.Session.StoredContractByHash)
			assert.Equal(t, testContract, deploy.Session.StoredContractByHash.Hash)
			assert.Equal(t, tt.entryPoint, deploy.Session.StoredContractByHash.EntryPoint)
			f.programs.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)

			amount, _ := deploy.Payment.Args().Get("amount")
			got, _ := amount.AsU512()
			assert.Equal(t, uint64(1_000_000_000), got.Uint64())
		})

		t.Run(tt.name+" unbound", func(t *testing.T) {
			f := newPrepareFixture(unboundContract())
			f.withKey()

			_, err := f.uc.Execute(ctx, tt.call, usecase.DeployOptions{})
			var usageErr *domain.UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.ErrorIs(t, err, domain.ErrNotBound)
		})
	}
}

func TestPrepareDeploy_Install(t *testing.T) {
	ctx := context.Background()
	f := newPrepareFixture(unboundContract())
	f.withoutKey()

	program := []byte("wasm")
	sender := testSender
	deploy, err := f.uc.Install(ctx, domain.InstallArgs{
		CollectionName:   "Punks",
		CollectionSymbol: "PNK",
		TotalTokenSupply: 100,
	}, usecase.DeployOptions{
		Program: program,
		Payment: uint256.NewInt(5),
		Sender:  &sender,
	})
	require.NoError(t, err)

	assert.Equal(t, program, deploy.Session.ModuleBytes.Module)
	assert.False(t, deploy.Signed())
	amount, _ := deploy.Payment.Args().Get("amount")
	got, _ := amount.AsU512()
	assert.Equal(t, uint64(5), got.Uint64())
	f.programs.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	f.signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
}

func TestPrepareDeploy_ProgramName(t *testing.T) {
	f := newPrepareFixture(boundContract())
	f.withKey()
	f.programs.On("Load", mock.Anything, "build/custom_transfer.wasm").Return([]byte{0x00, 0x61, 0x73, 0x6d, 1}, nil)

	deploy, err := f.uc.Transfer(context.Background(), domain.TransferArgs{
		TokenIdentifier: domain.ByID(1),
		Source:          testSender.AccountKey(),
		Target:          testSender.AccountKey(),
	}, usecase.DeployOptions{ProgramName: "build/custom_transfer.wasm"})
	require.NoError(t, err)

	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d, 1}, deploy.Session.ModuleBytes.Module)
	f.programs.AssertNotCalled(t, "Load", mock.Anything, "transfer_call.wasm")
}

func TestPrepareDeploy_Errors(t *testing.T) {
	ctx := context.Background()
	transfer := domain.TransferCall{TransferArgs: domain.TransferArgs{
		TokenIdentifier: domain.ByID(1),
		Source:          testSender.AccountKey(),
		Target:          clvalue.AccountKey([32]byte{1}),
	}}

	t.Run("no payment amount", func(t *testing.T) {
		f := newPrepareFixture(boundContract())
		f.withKey()
		f.cfg.Payments = config.Payments{}
		f.programs.On("Load", mock.Anything, "transfer_call.wasm").Return([]byte{1}, nil)

		_, err := f.uc.Execute(ctx, transfer, usecase.DeployOptions{})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "payment", validationErr.Field)
	})

	t.Run("no sender", func(t *testing.T) {
		f := newPrepareFixture(boundContract())
		f.withoutKey()
		f.programs.On("Load", mock.Anything, "transfer_call.wasm").Return([]byte{1}, nil)

		_, err := f.uc.Execute(ctx, transfer, usecase.DeployOptions{})
		var usageErr *domain.UsageError
		require.ErrorAs(t, err, &usageErr)
		assert.ErrorIs(t, err, domain.ErrNoSigningKey)
	})

	t.Run("missing program", func(t *testing.T) {
		f := newPrepareFixture(boundContract())
		f.withKey()
		f.programs.On("Load", mock.Anything, "transfer_call.wasm").Return(nil, errors.New("no such file"))

		_, err := f.uc.Execute(ctx, transfer, usecase.DeployOptions{})
		assert.ErrorContains(t, err, "transfer_call.wasm")
	})

	t.Run("mint without contract", func(t *testing.T) {
		f := newPrepareFixture(unboundContract())
		f.withKey()

		_, err := f.uc.Mint(ctx, domain.MintArgs{Owner: testSender.AccountKey()}, usecase.DeployOptions{})
		assert.ErrorIs(t, err, domain.ErrNotBound)
		f.programs.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("nil call", func(t *testing.T) {
		f := newPrepareFixture(boundContract())

		_, err := f.uc.Execute(ctx, nil, usecase.DeployOptions{})
		assert.ErrorIs(t, err, domain.ErrUnknownEntryPoint)
	})
}
