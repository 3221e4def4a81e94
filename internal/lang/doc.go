// Package lang defines the closed set of languages and translation
// directions anuvad supports: English, Hindi and Bangla, paired in all
// six directions.
package lang
