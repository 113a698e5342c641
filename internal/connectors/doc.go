// Package connectors provides clients for the external systems the
// pipelines talk to. Each connector implements the driven ports its
// system can serve; sharepoint implements the document library
// repository.
package connectors
