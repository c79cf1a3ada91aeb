// Package media implements the external media synchronization feature.
//
// It reconciles a declared list of external media items (id, title, mime
// type, variant URLs) against previously imported records, the way a
// convergent control loop turns desired state into actual state:
//
//  1. Untracked ids are fetched and created.
//  2. Tracked ids with an unchanged fingerprint are left alone entirely.
//  3. Tracked ids with a changed fingerprint are re-fetched and replaced.
//  4. Tracked ids absent from the batch are deleted, media included.
//
// The fingerprint is a digest over the declared fields; equality is the
// sole idempotence test, so resubmitting an unmodified batch is a no-op
// that reports every id as unchanged.
//
// # Components
//
//   - Store: persisted external id to fingerprint/object mapping (GORM).
//   - Fetcher: bounded HTTP retrieval materialized into object storage.
//   - Reconciler: the diff-and-apply engine with per-id error isolation.
//   - DropZone: file-based batch intake from a jailed directory, with
//     delete-on-success / retain-on-failure source lifecycle.
//   - Service / Handler / Feature: orchestration, HTTP surface, registration.
//
// # HTTP Endpoints
//
//   - POST /media/import : reconcile a batch (array, local_file object, or
//     empty array meaning delete-all).
//   - GET /media/image-sizes : registered image size definitions (public).
//   - GET /media/:external_id : tracked record with resolved source URL.
package media
