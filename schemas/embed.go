// Package schemas embeds the JSON Schemas that model replies are checked against.
package schemas

import "embed"

// ResumeMetrics is the file name of the roast metrics schema.
const ResumeMetrics = "resume_metrics.schema.json"

//go:embed *.schema.json
var FS embed.FS
