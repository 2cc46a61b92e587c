package wallet

// Tx is a transaction as served by esplora-compatible backends, reduced to
// the fields the wallet needs to account for a script's balance.
type Tx struct {
	Txid   string   `json:"txid"`
	Vin    []TxIn   `json:"vin"`
	Vout   []TxOut  `json:"vout"`
	Status TxStatus `json:"status"`
}

// TxIn is a transaction input. Prevout is nil for coinbase inputs.
type TxIn struct {
	Txid    string `json:"txid"`
	Vout    uint32 `json:"vout"`
	Prevout *TxOut `json:"prevout,omitempty"`
}

// TxOut is a transaction output. ScriptPubKey is hex encoded.
type TxOut struct {
	ScriptPubKey string `json:"scriptpubkey"`
	Value        uint64 `json:"value"`
}

// TxStatus tells whether and where a transaction was confirmed.
type TxStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint32 `json:"block_height,omitempty"`
	BlockHash   string `json:"block_hash,omitempty"`
	BlockTime   int64  `json:"block_time,omitempty"`
}
