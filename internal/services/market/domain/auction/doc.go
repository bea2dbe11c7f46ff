// Package auction is the auction engine: per-asset auction records, bid
// escrow, collaborator splits and the proceeds distribution run at
// settlement.
//
// The engine trusts two identities. Its configured caller (the gateway) is
// the only component that may submit commands, and within those commands only
// the platform operator may start, bid on, configure or end auctions.
package auction
