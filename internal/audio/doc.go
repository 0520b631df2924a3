// Package audio records where a downloaded track came from by writing ID3v2
// frames into the finished MP3.
package audio
