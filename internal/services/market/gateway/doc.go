// Package gateway is the single entry point of the marketplace.
//
// It owns the asset registry, the auction engine and the custody ledger,
// configures itself as the only caller both lower components trust, and runs
// every operation as one atomic step: each touched component decides against
// the current state, the first rejection aborts the whole operation, and only
// then is the combined batch of events journaled, folded and published.
package gateway
