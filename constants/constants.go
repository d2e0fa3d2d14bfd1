package constants

import "os"

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetLilyPondVersion is the version written to the \version statement.
func GetLilyPondVersion() string {
	return getEnv("LILYPOND_VERSION", DefaultLilyPondVersion)
}

func GetOutDir() string {
	return getEnv("LILYSCORE_OUT_DIR", "./out")
}

func GetListenAddr() string {
	return getEnv("LILYSCORE_ADDR", ":8080")
}

// GetDynamoEndpoint returns "" when documents should be kept in memory.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMODB_ENDPOINT")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMODB_REGION", "us-east-1")
}

func GetDynamoTable() string {
	return getEnv("DYNAMODB_TABLE", "lilyscore-documents")
}

const DefaultLilyPondVersion = "2.24.0"

// MIDI export resolution and loudness.
const TicksPerQuarter = 960
const DefaultVelocity = 90
const DefaultTempo = 120.0

const MaxRequestBytes = 1 << 20

// DynamoDB caps BatchGetItem at 100 keys.
const MaxBatchGet = 100
