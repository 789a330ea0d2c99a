// Package services implements the driving port interfaces.
// Services contain the core logic of askpdf and orchestrate calls to driven
// ports (adapters): the page store keeps the index in step with the source
// directory, the controller runs the load, refresh, fit and query stages, and
// the watcher refreshes on directory changes.
package services
