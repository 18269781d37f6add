package redis

import "fmt"

// Key prefix for all dictionary data
const keyPrefix = "wordduel"

// validityKey returns the Redis key for a word's cached validity
func validityKey(word string) string {
	return fmt.Sprintf("%s:word:valid:%s", keyPrefix, word)
}

// definitionKey returns the Redis key for a word's cached definition
func definitionKey(word string) string {
	return fmt.Sprintf("%s:word:definition:%s", keyPrefix, word)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
