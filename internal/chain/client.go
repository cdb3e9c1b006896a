package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/crypto/sha3"
)

var (
	// ErrNotFound means the node has no record of the transaction.
	ErrNotFound = errors.New("transaction not found on chain")
	// ErrInvalidAddress means an address is not a 20-byte hex string.
	ErrInvalidAddress = errors.New("invalid wallet address")
)

// Receipt is the mined outcome of a transaction.
type Receipt struct {
	TxHash            string
	Succeeded         bool
	BlockNumber       uint64
	GasUsed           uint64
	EffectiveGasPrice *big.Int
}

// Transaction is a transaction the node knows about, mined or not.
type Transaction struct {
	Hash     string
	GasPrice *big.Int
}

// Client is the read side of the blockchain the ledger reconciles against.
type Client interface {
	TransactionReceipt(ctx context.Context, hash string) (*Receipt, error)
	Transaction(ctx context.Context, hash string) (*Transaction, error)
	BlockTime(ctx context.Context, number uint64) (time.Time, error)
	TokenBalance(ctx context.Context, address string) (*big.Int, error)
}

// backend is the part of *ethclient.Client used here.
type backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

var balanceOfSelector = methodID("balanceOf(address)")

// EthClient implements Client over a JSON-RPC node.
type EthClient struct {
	backend backend
	token   *common.Address
	closer  func()
}

// Dial connects to rpcURL. When tokenAddress is empty, balances are native ether balances.
func Dial(ctx context.Context, rpcURL, tokenAddress string) (*EthClient, error) {
	if tokenAddress != "" && !common.IsHexAddress(tokenAddress) {
		return nil, fmt.Errorf("%w: token contract %q", ErrInvalidAddress, tokenAddress)
	}

	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain node: %w", err)
	}

	c := newEthClient(rpc, tokenAddress)
	c.closer = rpc.Close
	return c, nil
}

func newEthClient(b backend, tokenAddress string) *EthClient {
	c := &EthClient{backend: b}
	if tokenAddress != "" {
		addr := common.HexToAddress(tokenAddress)
		c.token = &addr
	}
	return c
}

func (c *EthClient) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func (c *EthClient) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	h, err := parseHash(hash)
	if err != nil {
		return nil, err
	}

	r, err := c.backend.TransactionReceipt(ctx, h)
	if errors.Is(err, ethereum.NotFound) {
		return nil, fmt.Errorf("%w: receipt %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("get receipt %s: %w", hash, err)
	}

	out := &Receipt{
		TxHash:            r.TxHash.Hex(),
		Succeeded:         r.Status == types.ReceiptStatusSuccessful,
		GasUsed:           r.GasUsed,
		EffectiveGasPrice: r.EffectiveGasPrice,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out, nil
}

func (c *EthClient) Transaction(ctx context.Context, hash string) (*Transaction, error) {
	h, err := parseHash(hash)
	if err != nil {
		return nil, err
	}

	tx, _, err := c.backend.TransactionByHash(ctx, h)
	if errors.Is(err, ethereum.NotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", hash, err)
	}

	return &Transaction{Hash: tx.Hash().Hex(), GasPrice: tx.GasPrice()}, nil
}

// BlockTime returns the timestamp of block number.
func (c *EthClient) BlockTime(ctx context.Context, number uint64) (time.Time, error) {
	header, err := c.backend.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return time.Time{}, fmt.Errorf("get block %d: %w", number, err)
	}
	return time.Unix(int64(header.Time), 0).UTC(), nil
}

// TokenBalance returns the token balance of address in the token's smallest unit.
func (c *EthClient) TokenBalance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	account := common.HexToAddress(address)

	if c.token == nil {
		bal, err := c.backend.BalanceAt(ctx, account, nil)
		if err != nil {
			return nil, fmt.Errorf("get balance %s: %w", address, err)
		}
		return bal, nil
	}

	data := make([]byte, 0, len(balanceOfSelector)+common.HashLength)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(account.Bytes(), common.HashLength)...)

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: c.token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call balanceOf %s: %w", address, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("call balanceOf %s: empty result, is %s a token contract?", address, c.token.Hex())
	}
	return new(big.Int).SetBytes(out), nil
}

func parseHash(hash string) (common.Hash, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(hash, "0x"), "0X")
	if len(s) != 2*common.HashLength || !isHex(s) {
		return common.Hash{}, fmt.Errorf("%w: malformed hash %q", ErrNotFound, hash)
	}
	return common.HexToHash(s), nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func methodID(signature string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return h.Sum(nil)[:4]
}
