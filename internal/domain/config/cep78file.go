package config

// Cep78FileConfig is the raw cep78.toml structure.
//
//	[client]
//	wasm_dir = "wasm"
//	strict_identifiers = false
//
//	[networks.testnet]
//	node_url = "${NODE_URL}"
//	chain_name = "casper-test"
//	contract_hash = "hash-..."
//
//	[payments]
//	install = "250000000000"
//	mint = "2000000000"
type Cep78FileConfig struct {
	Client   ClientFileConfig             `toml:"client"`
	Networks map[string]NetworkFileConfig `toml:"networks"`
	Payments map[string]string            `toml:"payments"`
}

type ClientFileConfig struct {
	WasmDir           string `toml:"wasm_dir"`
	KeyPath           string `toml:"key"`
	StrictIdentifiers bool   `toml:"strict_identifiers"`
	TTL               string `toml:"ttl"`
	GasPrice          uint64 `toml:"gas_price"`
}

type NetworkFileConfig struct {
	NodeURL             string `toml:"node_url"`
	ChainName           string `toml:"chain_name"`
	ContractHash        string `toml:"contract_hash"`
	ContractPackageHash string `toml:"contract_package_hash"`
}
