// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for both binaries.

# Ideas API

ParseFlags returns the stub API's Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

	-p              PORT              Server port (default: 3318)
	-d              DATABASE_URL      Database URL (required)
	-t              DATABASE_TYPE     sqlite (default) or postgres
	-session-salt   SESSION_SALT      Secret for session token HMAC (required)
	-uploads        UPLOAD_DIR        Image directory (default: uploads)
	-rps            RATE_LIMIT_RPS    Requests per second per client, 0 disables
	-burst          RATE_LIMIT_BURST  Bucket size (default: 10)
	-log            LOG_FORMAT        auto, text or json

# Board

ParseBoardFlags returns the presentation server's BoardConfig:

	-p              PORT                 Server port (default: 3319)
	-api            IDEAS_API_URL        Ideas API base URL (required)
	-session        IDEAS_SESSION        Session token
	-user           IDEAS_USER_ID        Session user id
	-truncate       IDEAS_TRUNCATE       Card description length (default: 180)
	-debounce       IDEAS_DEBOUNCE_MS    Filter debounce (default: 250)
	-default-image  IDEAS_DEFAULT_IMAGE  (default: /uploads/default.png)
	-log            LOG_FORMAT           auto, text or json
	-dump                                Print one loaded view and exit

# Precedence

CLI flags take precedence over environment variables, which take precedence
over defaults. Both binaries load a .env file into the environment before
parsing.
*/
package cliparse
