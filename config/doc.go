/*
Package config loads entitymapper settings from a .env file, an optional
YAML file and the environment.

Environment variables:

	ENTITYMAPPER_CONFIG                path of a YAML config file
	ENTITYMAPPER_BACKEND               memory (default) or dynamodb
	ENTITYMAPPER_STRICT_NARROWING      skip, rather than truncate, overflowing integers
	ENTITYMAPPER_FAIL_ON_FIELD_ERRORS  fail repository calls on field conversion errors
	ENTITYMAPPER_MAX_RETRIES           DynamoDB retries per call
	AWS_ACCESS_KEY, AWS_SECRET_KEY     static AWS credentials
	AWS_REGION, AWS_DDB_TABLE          DynamoDB region and table
	LOG_LEVEL                          debug, info, warn or error

A YAML file uses the same settings:

	backend: dynamodb
	logLevel: debug
	aws:
	  region: eu-north-1
	  table: entities
	  retryBackoff: 250ms
	mapper:
	  strictNarrowing: true
*/
package config
