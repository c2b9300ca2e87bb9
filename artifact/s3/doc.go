// Package s3 implements artifact.Store on Amazon S3.
//
// Uploads go through the SDK's upload manager so large frame payloads use
// multipart parallelism; everything else is one call per artifact.
package s3
