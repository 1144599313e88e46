package sql

import (
	"embed"
)

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_source_file.sql
var RegisterSourceFile string

//go:embed queries/lookup_source_file.sql
var LookupSourceFile string

//go:embed queries/reset_source_file.sql
var ResetSourceFile string

//go:embed queries/update_source_status.sql
var UpdateSourceStatus string

//go:embed queries/delete_source_records.sql
var DeleteSourceRecords string

//go:embed queries/delete_batch.sql
var DeleteBatch string

//go:embed queries/monthly_activity.sql
var MonthlyActivity string

//go:embed queries/analyze_records.sql
var AnalyzeRecords string
