// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package attachment stores the optional file sent with a request.

# Backends

Two Store implementations share one interface:

	fs, err := attachment.NewFileStore("public/uploads")
	s3s, err := attachment.NewS3Store(ctx, attachment.S3Config{Bucket: "requests"})

FileStore writes to a temp file and renames it into place, so readers
never see a partial upload. S3Store works against AWS or any S3-compatible
endpoint (MinIO with PathStyle).

# References

A record keeps the attachment's base file name, or the literal "Empty"
when nothing was uploaded. Handler.Resolve produces that reference:

	ref, err := attachment.NewHandler(store).Resolve(ctx, existing, upload)

A nil upload keeps existing (or yields "Empty"). Names are reduced with
CleanName; "..", empty names and the literal "Empty" fail with
ErrInvalidName. A failed write returns *StorageWriteError carrying the
reference that would have been stored, and the caller decides whether to
keep the record.
*/
package attachment
