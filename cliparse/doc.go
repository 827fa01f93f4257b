// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv pulls a .env file into the environment, then ParseFlags
returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Every flag falls back to an environment variable, then to a default:

	-p                       PORT                    8086
	-d                       DATABASE_URL            requestdesk.db (sqlite)
	-t                       DATABASE_TYPE           sqlite | postgres | memory
	--upload-driver          UPLOAD_DRIVER           fs | s3
	--upload-dir             UPLOAD_DIR              public/uploads
	--s3-bucket              S3_BUCKET
	--s3-region              S3_REGION               us-east-1
	--s3-endpoint            S3_ENDPOINT
	--s3-path-style          S3_PATH_STYLE           false
	--max-upload-mb          MAX_UPLOAD_MB           10
	--admin-user             ADMIN_USERNAME          admin
	--admin-password         ADMIN_PASSWORD          admin123
	--secure-cookies         SECURE_COOKIES          false
	--tolerate-upload-errors TOLERATE_UPLOAD_ERRORS  false

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error when:

  - DATABASE_TYPE is postgres and no URL is given
  - UPLOAD_DRIVER is s3 and S3_BUCKET is empty
  - the database type or upload driver is unknown
  - a numeric or boolean variable does not parse
*/
package cliparse
