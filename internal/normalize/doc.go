// Package normalize canonicalizes book titles so that a title taken from a
// library export and a title returned by a metadata provider compare equal
// when they only differ by case, accents, surrounding whitespace or the way
// the volume number is written ("Tome 06", "volume 6", "(6)").
package normalize
