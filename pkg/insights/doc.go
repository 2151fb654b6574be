// Package insights maps advertising insights responses onto typed records.
//
// Every insights field name is classified as a scalar string, a nested
// action record or an array of action records. BuildInsightsSchema turns a
// field list plus breakdowns into a Schema, and a Transformer fills typed
// rows from decoded responses against that Schema. Page metric responses
// take the separate time-series path and flatten into (date, metricName,
// metricValue) rows.
//
// Numeric metrics are kept as strings in insights rows because the API
// does not format numbers consistently. Decode responses with DecodeRaw so
// the original number text survives.
package insights
