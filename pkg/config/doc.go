/*
Package config loads optional defaults for acipher from a file.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Let users keep a key pair and mode in a file instead of on the command line
- Pick the parser from the file extension
- Reject unknown fields and invalid keys before anything is read or written

📄 Example (.acipher.yaml):

	key1: 5
	key2: 8
	decode: false
	write_log: true
	log_dir: ./transcripts

Command-line flags and positional keys always win over values from the file.
*/
package config
