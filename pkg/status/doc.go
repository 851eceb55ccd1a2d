/*
Package status is the shared progress ledger for file transfers.

	            +-------------+
	            |   Ledger    |
	            | (shared map)|
	            +------+------+
	                   |
	      +------------+-----------+
	      |                        |
	+-----+------+          +-----+-----+
	|  Entries   |          |  Summary  |
	| (per file) |          | (counts)  |
	+------------+          +-----------+

🎯 Purpose:
- Tracks per-file transfer state (pending, in_progress, completed, error, skipped)
- Maintains aggregate counts and byte totals
- Serves consistent snapshots to concurrent readers

🔄 Flow:
1. The transfer engine tracks every admitted source file
2. Workers report state transitions as they run
3. Observers poll Summary() and Entries() while transfers are in flight

⚡ Key Responsibilities:
- Linearizable updates: each call mutates the entry and the summary
  inside a single critical section, so a reader never sees one without
  the other
- Summary counters are keyed by the new state only; a second update for
  the same path bumps the new state's counter without decrementing the
  old one

🤝 Interfaces:
- Ledger: Track, Update, Get, Entries, Summary, AddCleanup
*/
package status
