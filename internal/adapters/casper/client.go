package casper

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// Node JSON-RPC methods
const (
	methodStateRootHash  = "chain_get_state_root_hash"
	methodGetItem        = "state_get_item"
	methodDictionaryItem = "state_get_dictionary_item"
	methodPutDeploy      = "account_put_deploy"
)

// Client talks to a node over JSON-RPC 2.0 with positional params
type Client struct {
	rpc     *rpc.Client
	url     string
	timeout time.Duration
	log     *slog.Logger
}

var (
	_ usecase.StateQuerier    = (*Client)(nil)
	_ usecase.DeploySubmitter = (*Client)(nil)
)

// NewClient creates a client for the configured network. Dialing an HTTP
// endpoint does no I/O, so an unreachable node only fails on first use.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) (*Client, error) {
	c := &Client{timeout: cfg.Timeout, log: log}
	if cfg.Network == nil || cfg.Network.NodeURL == "" {
		return c, nil
	}
	if err := c.dial(cfg.Network.NodeURL); err != nil {
		return nil, err
	}
	return c, nil
}

// Dial creates a client for url
func Dial(url string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	c := &Client{timeout: timeout, log: log}
	if err := c.dial(url); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) dial(url string) error {
	client, err := rpc.DialOptions(context.Background(), url)
	if err != nil {
		return fmt.Errorf("failed to connect to node %s: %w", url, err)
	}
	c.rpc = client
	c.url = url
	return nil
}

// Close releases the underlying connection
func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}

type stateRootHashResult struct {
	StateRootHash string `json:"state_root_hash"`
}

type storedValue struct {
	CLValue *clvalue.Value `json:"CLValue"`
}

type storedValueResult struct {
	StoredValue storedValue `json:"stored_value"`
}

type dictionaryIdentifier struct {
	ContractNamedKey contractNamedKey `json:"ContractNamedKey"`
}

type contractNamedKey struct {
	Key               string `json:"key"`
	DictionaryName    string `json:"dictionary_name"`
	DictionaryItemKey string `json:"dictionary_item_key"`
}

type putDeployResult struct {
	DeployHash string `json:"deploy_hash"`
}

// StateRootHash returns the state root hash of the latest block
func (c *Client) StateRootHash(ctx context.Context) (string, error) {
	var res stateRootHashResult
	if err := c.call(ctx, &res, methodStateRootHash); err != nil {
		return "", err
	}
	if res.StateRootHash == "" {
		return "", fmt.Errorf("%s: empty state root hash", methodStateRootHash)
	}
	return res.StateRootHash, nil
}

// QueryContractValue reads the CLValue found under path in the named keys of contract
func (c *Client) QueryContractValue(ctx context.Context, stateRoot string, contract [32]byte, path []string) (clvalue.Value, error) {
	var res storedValueResult
	key := clvalue.HashPrefix + hex.EncodeToString(contract[:])
	if err := c.call(ctx, &res, methodGetItem, stateRoot, key, path); err != nil {
		return clvalue.Value{}, err
	}
	return res.StoredValue.value(strings.Join(path, "/"))
}

// QueryDictionaryItem reads dictionary[itemKey] of contract
func (c *Client) QueryDictionaryItem(ctx context.Context, stateRoot string, contract [32]byte, dictionary, itemKey string) (clvalue.Value, error) {
	var res storedValueResult
	id := dictionaryIdentifier{ContractNamedKey: contractNamedKey{
		Key:               clvalue.HashPrefix + hex.EncodeToString(contract[:]),
		DictionaryName:    dictionary,
		DictionaryItemKey: itemKey,
	}}
	if err := c.call(ctx, &res, methodDictionaryItem, stateRoot, id); err != nil {
		return clvalue.Value{}, err
	}
	return res.StoredValue.value(dictionary + "/" + itemKey)
}

// PutDeploy submits deploy and returns the hash the node reports
func (c *Client) PutDeploy(ctx context.Context, deploy *domain.Deploy) (string, error) {
	var res putDeployResult
	if err := c.call(ctx, &res, methodPutDeploy, deploy); err != nil {
		return "", err
	}
	if res.DeployHash == "" {
		return deploy.HashHex(), nil
	}
	if res.DeployHash != deploy.HashHex() {
		c.log.Warn("node reported a different deploy hash", "local", deploy.HashHex(), "node", res.DeployHash)
	}
	return res.DeployHash, nil
}

func (s storedValue) value(what string) (clvalue.Value, error) {
	if s.CLValue == nil {
		return clvalue.Value{}, fmt.Errorf("%s is not a CLValue", what)
	}
	return *s.CLValue, nil
}

func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	if c.rpc == nil {
		return &domain.UsageError{Op: method, Reason: "node url is not configured"}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.log.Debug("rpc call", "method", method, "node", c.url)
	if err := c.rpc.CallContext(ctx, result, method, args...); err != nil {
		return classify(method, err)
	}
	return nil
}

// Query error codes returned by the node
const (
	codeQueryFailed       = -32003
	codeNoSuchDictionary  = -32004
	codeDictionaryMissing = -32005
)

func classify(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		detail := err.Error()
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
			detail = fmt.Sprintf("%s: %v", detail, dataErr.ErrorData())
		}
		switch rpcErr.ErrorCode() {
		case codeQueryFailed, codeNoSuchDictionary, codeDictionaryMissing:
			if strings.Contains(strings.ToLower(detail), "not found") || strings.Contains(detail, "ValueNotFound") {
				return fmt.Errorf("%s: %w: %s", method, domain.ErrNotFound, detail)
			}
		}
		return fmt.Errorf("%s failed (code %d): %s", method, rpcErr.ErrorCode(), detail)
	}
	return fmt.Errorf("%s: %w", method, err)
}
