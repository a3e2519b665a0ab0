package token

import "strings"

// reserved holds the MySQL reserved words that matter to the DDL grammar.
// Non-reserved keywords (ENGINE, COMMENT, HASH, LIST, DATE, TEXT, ...) are
// deliberately absent: they may be used as unquoted identifiers.
var reserved = map[string]struct{}{
	"ACCESSIBLE": {}, "ADD": {}, "ALL": {}, "ALTER": {}, "ANALYZE": {}, "AND": {},
	"AS": {}, "ASC": {}, "ASENSITIVE": {}, "BEFORE": {}, "BETWEEN": {}, "BIGINT": {},
	"BINARY": {}, "BLOB": {}, "BOTH": {}, "BY": {}, "CALL": {}, "CASCADE": {},
	"CASE": {}, "CHANGE": {}, "CHAR": {}, "CHARACTER": {}, "CHECK": {}, "COLLATE": {},
	"COLUMN": {}, "CONDITION": {}, "CONSTRAINT": {}, "CONTINUE": {}, "CONVERT": {},
	"CREATE": {}, "CROSS": {}, "CURRENT_DATE": {}, "CURRENT_TIME": {},
	"CURRENT_TIMESTAMP": {}, "CURRENT_USER": {}, "CURSOR": {}, "DATABASE": {},
	"DATABASES": {}, "DECIMAL": {}, "DECLARE": {}, "DEFAULT": {}, "DELAYED": {},
	"DELETE": {}, "DESC": {}, "DESCRIBE": {}, "DETERMINISTIC": {}, "DISTINCT": {},
	"DIV": {}, "DOUBLE": {}, "DROP": {}, "DUAL": {}, "EACH": {}, "ELSE": {},
	"ELSEIF": {}, "ENCLOSED": {}, "ESCAPED": {}, "EXISTS": {}, "EXIT": {},
	"EXPLAIN": {}, "FALSE": {}, "FETCH": {}, "FLOAT": {}, "FOR": {}, "FORCE": {},
	"FOREIGN": {}, "FROM": {}, "FULLTEXT": {}, "GENERATED": {}, "GRANT": {},
	"GROUP": {}, "HAVING": {}, "IF": {}, "IGNORE": {}, "IN": {}, "INDEX": {},
	"INNER": {}, "INOUT": {}, "INSERT": {}, "INT": {}, "INTEGER": {}, "INTERVAL": {},
	"INTO": {}, "IS": {}, "ITERATE": {}, "JOIN": {}, "KEY": {}, "KEYS": {}, "KILL": {},
	"LEADING": {}, "LEAVE": {}, "LEFT": {}, "LIKE": {}, "LIMIT": {}, "LINEAR": {},
	"LINES": {}, "LOAD": {}, "LOCK": {}, "LONG": {}, "LONGBLOB": {}, "LONGTEXT": {},
	"LOOP": {}, "MATCH": {}, "MAXVALUE": {}, "MEDIUMBLOB": {}, "MEDIUMINT": {},
	"MEDIUMTEXT": {}, "MOD": {}, "MODIFIES": {}, "NATURAL": {}, "NOT": {}, "NULL": {},
	"NUMERIC": {}, "ON": {}, "OPTIMIZE": {}, "OPTION": {}, "OPTIONALLY": {}, "OR": {},
	"ORDER": {}, "OUT": {}, "OUTER": {}, "PARTITION": {}, "PRECISION": {},
	"PRIMARY": {}, "PROCEDURE": {}, "PURGE": {}, "RANGE": {}, "READ": {}, "READS": {},
	"REAL": {}, "REFERENCES": {}, "REGEXP": {}, "RELEASE": {}, "RENAME": {},
	"REPEAT": {}, "REPLACE": {}, "REQUIRE": {}, "RESTRICT": {}, "RETURN": {},
	"REVOKE": {}, "RIGHT": {}, "RLIKE": {}, "SCHEMA": {}, "SCHEMAS": {}, "SELECT": {},
	"SENSITIVE": {}, "SEPARATOR": {}, "SET": {}, "SHOW": {}, "SIGNAL": {},
	"SMALLINT": {}, "SPATIAL": {}, "SPECIFIC": {}, "SQL": {}, "SQLEXCEPTION": {},
	"SQLSTATE": {}, "SQLWARNING": {}, "STARTING": {}, "STORED": {}, "STRAIGHT_JOIN": {},
	"TABLE": {}, "TERMINATED": {}, "THEN": {}, "TINYBLOB": {}, "TINYINT": {},
	"TINYTEXT": {}, "TO": {}, "TRAILING": {}, "TRIGGER": {}, "TRUE": {}, "UNDO": {},
	"UNION": {}, "UNIQUE": {}, "UNLOCK": {}, "UNSIGNED": {}, "UPDATE": {}, "USAGE": {},
	"USE": {}, "USING": {}, "UTC_DATE": {}, "UTC_TIME": {}, "UTC_TIMESTAMP": {},
	"VALUES": {}, "VARBINARY": {}, "VARCHAR": {}, "VARCHARACTER": {}, "VARYING": {},
	"VIRTUAL": {}, "WHEN": {}, "WHERE": {}, "WHILE": {}, "WITH": {}, "WRITE": {},
	"XOR": {}, "ZEROFILL": {},
}

// IsReserved reports whether word is a reserved word (case-insensitive).
func IsReserved(word string) bool {
	_, ok := reserved[strings.ToUpper(word)]
	return ok
}
