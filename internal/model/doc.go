package model

// Package model defines the client's domain records: the selected image, the
// classifier catalog, prediction results and their ranked presentation, the
// request state enum, the session that owns them, and the failure taxonomy.
// Records are plain values so handlers can be tested without a UI runtime.
