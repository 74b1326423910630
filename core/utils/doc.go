// Package utils provides small helpers shared by the feature packages.
//
// The conversions normalize the legacy locations endpoint, which is not strict
// about its types: postal codes and coordinates show up as strings in some
// events and as numbers in others.
//
// The file helpers give the JSON documents (address cache, city registry,
// feature collections) atomic replacement and a copy-before-overwrite backup.
package utils
