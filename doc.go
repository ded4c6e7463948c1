// Package etfup refreshes the data embedded in a generated ETF comparison page.
//
// The page carries three embedded-data blocks: the top holdings of each fund,
// the trailing returns of each fund, and the trailing returns of the individual
// stocks those funds hold. A run builds a Snapshot by fetching from external
// sources, then serializes and patches the blocks back into the page.
//
// The core concerns are:
//   - Tiered acquisition: each instrument is fetched through an ordered chain of
//     tiers (structured API, page scrape, price-history computation). The first
//     tier with usable data wins and failures never leave the chain.
//   - Price computation: trailing percent changes over the canonical horizons
//     (1M, 3M, 6M, 1Y, 3Y, 5Y) computed from daily closing prices.
//   - Batch retrieval: stock price histories fetched in one batch, with a
//     per-ticker fallback and per-ticker failure isolation.
//
// Serialization and patching live in package document; the providers live in
// packages justetf, yahoo and eodhd; the command line lives in package cmd.
package etfup
