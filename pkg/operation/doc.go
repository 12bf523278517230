/*
Package operation executes plans against the local filesystem.

	+----------+     +-----------+     +-----------+
	|   Plan   | --> | Operation | --> |  fileops  |
	| (config) |     |  (apply,  |     | (os calls)|
	+----------+     |   clean)  |     +-----------+
	                 +-----------+

🎯 Purpose:
- Turns a validated plan into ordered filesystem calls
- Reports each entry through the console logger
- Runs independent tree files concurrently when the plan asks for it

🔄 Flow:
1. apply creates directories, then files, then trees, then removals
2. clean removes the plan destination recursively
3. the Runner sequences operations, or fans them out on an errgroup

📝 Design Philosophy:
Operations stop at the first failing entry; there is no partial-success
accounting and no retry. Whatever was produced before the failure stays on
disk, matching the all-or-nothing-per-call contract of the fileops layer.
*/
package operation
