package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/crypto"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/items"
	"github.com/contribute-dao/weft/x/splitter"
	"github.com/contribute-dao/weft/x/vault"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Tickers and names used by the default genesis.
const (
	SettlementTicker = "TDAO"
	GovernedTicker   = "TRIG"
	LiquidityTicker  = "LPT"
	NftCollection    = "trig_nft"

	TrigVault = "trig"
	NftVault  = "nft"
	LpVault   = "lp"
)

// nftPoolPoints is the allocation of every item class of the nft vault.
var nftPoolPoints = []uint64{2, 10, 34, 84, 180, 280, 360, 50}

const lpEpochLength = 6500

type genesis struct {
	Cash   cash.Genesis              `json:"cash"`
	Items  []items.GenesisCollection `json:"items"`
	Vault  vault.Genesis             `json:"vault"`
	Config genesisConfig             `json:"conf"`
}

type genesisConfig struct {
	Vault    *vault.Configuration    `json:"vault"`
	Splitter *splitter.Configuration `json:"splitter"`
}

// GenInitOptions will produce the default application state: the tokens,
// the nft collection, the three reward vaults and the fee splitter. A single
// admin account controls all of them and is the treasury. Calling the
// splitter update requires one whole settlement token.
//
// The admin address can be given as the first argument. If missing, a new
// key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var admin weft.Address
	if len(args) > 0 {
		addr, err := weft.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "admin address")
		}
		admin = addr
	} else {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		admin = addr
		fmt.Println(keys)
	}
	return json.MarshalIndent(DefaultGenesis(admin), "", "  ")
}

// DefaultGenesis returns the default application state with the given admin.
func DefaultGenesis(admin weft.Address) interface{} {
	nftPools := make([]vault.GenesisPool, len(nftPoolPoints))
	for class, points := range nftPoolPoints {
		nftPools[class] = vault.GenesisPool{
			Points: points,
			Asset:  vault.CountedAsset(NftCollection, uint32(class)),
		}
	}

	return genesis{
		Cash: cash.Genesis{
			Tokens: []cash.GenesisToken{
				{Ticker: SettlementTicker, Name: "Contribute DAO"},
				{Ticker: GovernedTicker, Name: "Trigger"},
				{Ticker: LiquidityTicker, Name: "TDAO liquidity"},
			},
			Accounts: []cash.GenesisAccount{
				{
					Address: admin,
					Coins: coin.Coins{
						coin.WholeCoin(1000000, SettlementTicker),
						coin.WholeCoin(1000, GovernedTicker),
					},
				},
			},
		},
		Items: []items.GenesisCollection{
			{Name: NftCollection, Classes: uint32(len(nftPoolPoints))},
		},
		Vault: vault.Genesis{
			Vaults: []vault.GenesisVault{
				{
					Name:       TrigVault,
					Settlement: SettlementTicker,
					Pools: []vault.GenesisPool{
						{Points: 1, Asset: vault.FungibleAsset(GovernedTicker)},
					},
				},
				{
					Name:       NftVault,
					Settlement: SettlementTicker,
					Pools:      nftPools,
				},
				{
					Name:        LpVault,
					Settlement:  SettlementTicker,
					EpochLength: lpEpochLength,
					Pools: []vault.GenesisPool{
						{Points: 1, Asset: vault.FungibleAsset(LiquidityTicker)},
					},
				},
			},
		},
		Config: genesisConfig{
			Vault: &vault.Configuration{Admin: admin},
			Splitter: &splitter.Configuration{
				Admin:            admin,
				Settlement:       SettlementTicker,
				GovernedToken:    SettlementTicker,
				MinCallerHolding: coin.Whole(1),
				TrigFeeBps:       splitter.MinTrigFeeBps,
				KeeperReward:     splitter.KeeperRewardPolicy{Bps: 10},
				Treasury:         admin,
				TrigVault:        TrigVault,
				NftVault:         NftVault,
				LpVault:          LpVault,
			},
		},
	}
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "weft.db")
	}

	application, err := Application("weftd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (weft.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
