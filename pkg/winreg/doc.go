// Package winreg classifies parsed Windows Registry hives and dispatches
// their keys to interpretation plugins.
//
// The pipeline is pull-based and single threaded: a Parser detects the hive
// type by probing diagnostic key paths, builds a per-hive path cache, walks
// every key reachable from the root exactly once in pre-order, and offers
// each key to the catalog's plugins in ascending weight order. The first
// plugin returning a result claims the key; its events are enriched with the
// key offset, hive type, and plugin identity before they reach the consumer.
//
// Plugin failures never abort a parse. They are recorded on the Diagnostics
// collector returned alongside the event sequence, and the engine continues
// with the next plugin or key.
package winreg
