package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/sha3"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/metrics"
	"github.com/mrz1836/seedscan/internal/secure"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// ErrUnsupportedCoin indicates the coin has no derivation path.
var ErrUnsupportedCoin = scanerr.ErrUnsupportedCoin

// Address represents a derived blockchain address.
type Address struct {
	// Coin is the coin the address belongs to.
	Coin coin.Kind `json:"coin"`

	// Path is the BIP44 derivation path used.
	Path string `json:"path"`

	// Index is the address index within the external chain.
	Index uint32 `json:"index"`

	// Address is the coin-formatted address string.
	Address string `json:"address"`

	// PublicKey is the compressed public key in hex format.
	PublicKey string `json:"public_key"`
}

// GetDerivationPath returns the full BIP44 path for an external-chain address.
func GetDerivationPath(kind coin.Kind, account, index uint32) string {
	return fmt.Sprintf("m/44'/%d'/%d'/0/%d", kind.CoinType(), account, index)
}

// DeriveAddress derives the address for the given coin, account and index from a BIP39 seed.
func DeriveAddress(seed []byte, kind coin.Kind, account, index uint32) (*Address, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCoin, kind)
	}

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	chainKey, err := deriveExternalChainKey(masterKey, kind, account)
	if err != nil {
		return nil, err
	}

	return addressAt(chainKey, kind, account, index)
}

// deriveExternalChainKey walks m / 44' / coin_type' / account' / 0.
func deriveExternalChainKey(masterKey *bip32.Key, kind coin.Kind, account uint32) (*bip32.Key, error) {
	purposeKey, err := masterKey.NewChildKey(bip32.FirstHardenedChild + 44)
	if err != nil {
		return nil, fmt.Errorf("failed to derive purpose key: %w", err)
	}

	coinTypeKey, err := purposeKey.NewChildKey(bip32.FirstHardenedChild + kind.CoinType())
	if err != nil {
		return nil, fmt.Errorf("failed to derive coin type key: %w", err)
	}

	accountKey, err := coinTypeKey.NewChildKey(bip32.FirstHardenedChild + account)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account key: %w", err)
	}

	changeKey, err := accountKey.NewChildKey(0)
	if err != nil {
		return nil, fmt.Errorf("failed to derive change key: %w", err)
	}

	return changeKey, nil
}

// addressAt derives the child at index and encodes its public key for the coin.
func addressAt(chainKey *bip32.Key, kind coin.Kind, account, index uint32) (*Address, error) {
	indexKey, err := chainKey.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("failed to derive index key: %w", err)
	}

	pubKey := indexKey.PublicKey().Key
	encoded, err := EncodeAddress(kind, pubKey)
	if err != nil {
		return nil, err
	}

	return &Address{
		Coin:      kind,
		Path:      GetDerivationPath(kind, account, index),
		Index:     index,
		Address:   encoded,
		PublicKey: hex.EncodeToString(pubKey),
	}, nil
}

// EncodeAddress turns a 33-byte compressed secp256k1 public key into the coin's address format.
func EncodeAddress(kind coin.Kind, compressedPubKey []byte) (string, error) {
	switch kind.AddressFormat() {
	case coin.FormatP2PKH:
		return encodeP2PKH(kind, compressedPubKey)
	case coin.FormatEIP55:
		return encodeEIP55(compressedPubKey)
	case coin.FormatUnknown:
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedCoin, kind)
}

// litecoinMainNetParams carries the Litecoin P2PKH version byte; only
// PubKeyHashAddrID is read by the address encoder.
//
//nolint:gochecknoglobals // Network parameters are constant after init
var litecoinMainNetParams = func() chaincfg.Params {
	p := chaincfg.MainNetParams
	p.Name = "litecoin"
	p.PubKeyHashAddrID = coin.VersionLTC
	return p
}()

func netParams(kind coin.Kind) (*chaincfg.Params, bool) {
	switch kind {
	case coin.BTC:
		return &chaincfg.MainNetParams, true
	case coin.LTC:
		return &litecoinMainNetParams, true
	case coin.ETH:
		return nil, false
	default:
		return nil, false
	}
}

// encodeP2PKH returns Base58Check(version || RIPEMD160(SHA256(pubkey))).
func encodeP2PKH(kind coin.Kind, pubKey []byte) (string, error) {
	params, ok := netParams(kind)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCoin, kind)
	}

	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), params)
	if err != nil {
		return "", fmt.Errorf("encoding %s address: %w", kind, err)
	}
	return addr.EncodeAddress(), nil
}

// encodeEIP55 returns the checksummed Ethereum address for a compressed public key.
func encodeEIP55(pubKey []byte) (string, error) {
	ecdsaPub, err := ethcrypto.DecompressPubkey(pubKey)
	if err != nil {
		return "", fmt.Errorf("failed to decompress public key: %w", err)
	}
	// common.Address.Hex applies the EIP-55 checksum
	return ethcrypto.PubkeyToAddress(*ecdsaPub).Hex(), nil
}

// ToChecksumAddress applies the EIP-55 mixed-case checksum to a hex address.
// Input that is not 40 hex digits (with optional 0x) is returned unchanged.
func ToChecksumAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	if len(addr) != 40 || !isHex(addr) {
		return address
	}

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(addr))
	hash := hex.EncodeToString(hasher.Sum(nil))

	result := make([]byte, 42)
	result[0] = '0'
	result[1] = 'x'
	for i := 0; i < 40; i++ {
		c := addr[i]
		if hash[i] >= '8' && c >= 'a' && c <= 'f' {
			c -= 32
		}
		result[i+2] = c
	}
	return string(result)
}

// IsValidETHChecksum reports whether address is a 0x-prefixed 40-digit hex
// string whose letter casing matches its EIP-55 checksum.
func IsValidETHChecksum(address string) bool {
	if len(address) != 42 || !strings.HasPrefix(address, "0x") || !isHex(address[2:]) {
		return false
	}
	return ToChecksumAddress(address) == address
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// Deriver derives addresses for one seed phrase, caching the external-chain
// key of each coin so consecutive indices cost a single child derivation.
type Deriver struct {
	mu        sync.Mutex
	seed      *secure.Bytes
	account   uint32
	master    *bip32.Key
	chainKeys map[coin.Kind]*bip32.Key
}

// NewDeriver validates the mnemonic and expands it into a seed held in locked memory.
func NewDeriver(mnemonic string, account uint32) (*Deriver, error) {
	raw, err := MnemonicToSeed(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer secure.Zero(raw)

	d := &Deriver{
		seed:      secure.FromSlice(raw),
		account:   account,
		chainKeys: make(map[coin.Kind]*bip32.Key),
	}

	d.master, err = bip32.NewMasterKey(d.seed.Bytes())
	if err != nil {
		d.seed.Destroy()
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	return d, nil
}

// Derive returns the external-chain address of kind at index.
func (d *Deriver) Derive(kind coin.Kind, index uint32) (*Address, error) {
	addr, err := d.derive(kind, index)
	metrics.Global.RecordDerivation(err)
	return addr, err
}

func (d *Deriver) derive(kind coin.Kind, index uint32) (*Address, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCoin, kind)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.master == nil {
		return nil, ErrDeriverClosed
	}

	chainKey, ok := d.chainKeys[kind]
	if !ok {
		var err error
		chainKey, err = deriveExternalChainKey(d.master, kind, d.account)
		if err != nil {
			return nil, err
		}
		d.chainKeys[kind] = chainKey
	}

	return addressAt(chainKey, kind, d.account, index)
}

// Destroy zeroes the seed and drops all cached keys.
func (d *Deriver) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.master != nil {
		secure.Zero(d.master.Key)
		d.master = nil
	}
	for k, key := range d.chainKeys {
		secure.Zero(key.Key)
		delete(d.chainKeys, k)
	}
	d.seed.Destroy()
}

// ErrDeriverClosed is returned by Derive after Destroy.
var ErrDeriverClosed = scanerr.New("DERIVER_CLOSED", "deriver has been destroyed")
