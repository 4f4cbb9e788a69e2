// Package services implements the driving ports: the rewrite pipeline,
// submission to GitHub, single-document extraction and settings.
//
// Services only talk to driven ports; adapters are injected by the caller.
package services
