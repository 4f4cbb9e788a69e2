// Package cli implements the webidl-updater command line interface with cobra.
//
// Commands talk to the core through driving ports only. The services are
// built lazily by the factory registered with SetFactory, once the
// persistent flags are known.
package cli
