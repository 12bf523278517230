/*
Package config manages plan parsing and validation for filectl.

	            +-------------+
	            |    Plan     |
	            |  (Entries)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+----+ +----+----+
	|   YAML    | |  JSON  | |   HCL   |
	|  Parser   | | Parser | | Parser  |
	+-----------+ +--------+ +---------+

🎯 Purpose:
- Loads declarative plans of filesystem operations
- Validates plan entries before anything touches the disk
- Supports multiple plan formats behind one loader

🔄 Flow:
1. Reads the plan from a file
2. Dispatches to a format-specific parser
3. Validates directories, files, trees and removals
4. Hands the validated plan to the operation package

📝 Design Philosophy:
The plan file is the source of truth for a batch run. Parsing is strict
(unknown fields are rejected in YAML and JSON) so typos surface as load
errors rather than as silently skipped entries.
*/
package config
