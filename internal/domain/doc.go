// Package domain holds the records, kinds and error types shared by the
// roster, rendering and batch packages. It has no third-party dependencies.
package domain
