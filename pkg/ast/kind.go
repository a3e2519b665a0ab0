package ast

import "fmt"

// Kind identifies the grammar production a Node was built from.
type Kind int

// Node kinds. Each kind corresponds to one production of the DDL grammar.
const (
	Invalid Kind = iota

	Terminal // a single consumed token
	Script   // a whole parsing unit

	// Statements
	CreateDatabase
	CreateTable
	AlterTable
	CreateIndex
	CreateProcedure
	CreateFunction
	CreateUdf
	CreateTrigger
	CreateView
	CreateServer
	CreateTablespace
	CreateLogfileGroup
	CreateEvent
	UseStatement
	DelimiterStatement
	OtherStatement // any statement this front end does not analyse

	// Names
	Identifier
	DotIdentifier
	QualifiedIdentifier
	TableName
	TableRef
	ColumnList
	UserName
	DefinerClause

	// Shared clauses
	IfNotExists
	CharsetNameOrDefault
	CollationNameOrDefault
	CharsetName
	CollationName
	TextLiteral
	Expr
	Body

	// Schema
	CreateDatabaseOption

	// Tables
	TableElementList
	ColumnDefinition
	ColumnAttribute
	GeneratedClause
	TableConstraintDef
	IndexName
	IndexType
	IndexOption
	KeyList
	KeyPart
	References
	ReferenceOption
	CreateTableOptions
	CreateTableOption
	TableCreationSource
	Partition
	PartitionDefKey
	PartitionDefHash
	PartitionDefRangeList
	SubPartitions
	PartitionDefinitions
	PartitionDefinition
	PartitionValues
	SubpartitionDefinition
	PartitionOption

	// ALTER TABLE
	AlterList
	AlterListItem
	Place
	AlterAlgorithmOption
	AlterLockOption

	// CREATE INDEX
	CreateIndexTarget

	// Data types
	DataType
	FieldLength
	Precision
	TypeDatetimePrecision
	FieldOptions
	StringList
	StringBinary

	// Routines, triggers, views, events
	ProcedureParameter
	FunctionParameter
	ReturnsClause
	RoutineOption
	TriggerFollowsPrecedesClause
	ViewAlgorithm
	ViewSuid
	ViewCheckOption
	Schedule
	EventOption

	// Servers, tablespaces, logfile groups
	ServerOption
	TablespaceOption
	LogfileGroupRef
	LogfileGroupOption
	SizeNumber

	numKinds
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	Terminal: "Terminal",
	Script:   "Script",

	CreateDatabase:     "CreateDatabase",
	CreateTable:        "CreateTable",
	AlterTable:         "AlterTable",
	CreateIndex:        "CreateIndex",
	CreateProcedure:    "CreateProcedure",
	CreateFunction:     "CreateFunction",
	CreateUdf:          "CreateUdf",
	CreateTrigger:      "CreateTrigger",
	CreateView:         "CreateView",
	CreateServer:       "CreateServer",
	CreateTablespace:   "CreateTablespace",
	CreateLogfileGroup: "CreateLogfileGroup",
	CreateEvent:        "CreateEvent",
	UseStatement:       "UseStatement",
	DelimiterStatement: "DelimiterStatement",
	OtherStatement:     "OtherStatement",

	Identifier:          "Identifier",
	DotIdentifier:       "DotIdentifier",
	QualifiedIdentifier: "QualifiedIdentifier",
	TableName:           "TableName",
	TableRef:            "TableRef",
	ColumnList:          "ColumnList",
	UserName:            "UserName",
	DefinerClause:       "DefinerClause",

	IfNotExists:            "IfNotExists",
	CharsetNameOrDefault:   "CharsetNameOrDefault",
	CollationNameOrDefault: "CollationNameOrDefault",
	CharsetName:            "CharsetName",
	CollationName:          "CollationName",
	TextLiteral:            "TextLiteral",
	Expr:                   "Expr",
	Body:                   "Body",

	CreateDatabaseOption: "CreateDatabaseOption",

	TableElementList:       "TableElementList",
	ColumnDefinition:       "ColumnDefinition",
	ColumnAttribute:        "ColumnAttribute",
	GeneratedClause:        "GeneratedClause",
	TableConstraintDef:     "TableConstraintDef",
	IndexName:              "IndexName",
	IndexType:              "IndexType",
	IndexOption:            "IndexOption",
	KeyList:                "KeyList",
	KeyPart:                "KeyPart",
	References:             "References",
	ReferenceOption:        "ReferenceOption",
	CreateTableOptions:     "CreateTableOptions",
	CreateTableOption:      "CreateTableOption",
	TableCreationSource:    "TableCreationSource",
	Partition:              "Partition",
	PartitionDefKey:        "PartitionDefKey",
	PartitionDefHash:       "PartitionDefHash",
	PartitionDefRangeList:  "PartitionDefRangeList",
	SubPartitions:          "SubPartitions",
	PartitionDefinitions:   "PartitionDefinitions",
	PartitionDefinition:    "PartitionDefinition",
	PartitionValues:        "PartitionValues",
	SubpartitionDefinition: "SubpartitionDefinition",
	PartitionOption:        "PartitionOption",

	AlterList:            "AlterList",
	AlterListItem:        "AlterListItem",
	Place:                "Place",
	AlterAlgorithmOption: "AlterAlgorithmOption",
	AlterLockOption:      "AlterLockOption",

	CreateIndexTarget: "CreateIndexTarget",

	DataType:              "DataType",
	FieldLength:           "FieldLength",
	Precision:             "Precision",
	TypeDatetimePrecision: "TypeDatetimePrecision",
	FieldOptions:          "FieldOptions",
	StringList:            "StringList",
	StringBinary:          "StringBinary",

	ProcedureParameter:           "ProcedureParameter",
	FunctionParameter:            "FunctionParameter",
	ReturnsClause:                "ReturnsClause",
	RoutineOption:                "RoutineOption",
	TriggerFollowsPrecedesClause: "TriggerFollowsPrecedesClause",
	ViewAlgorithm:                "ViewAlgorithm",
	ViewSuid:                     "ViewSuid",
	ViewCheckOption:              "ViewCheckOption",
	Schedule:                     "Schedule",
	EventOption:                  "EventOption",

	ServerOption:       "ServerOption",
	TablespaceOption:   "TablespaceOption",
	LogfileGroupRef:    "LogfileGroupRef",
	LogfileGroupOption: "LogfileGroupOption",
	SizeNumber:         "SizeNumber",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsStatement reports whether nodes of this kind are top-level statements.
func (k Kind) IsStatement() bool {
	return k >= CreateDatabase && k <= OtherStatement
}
