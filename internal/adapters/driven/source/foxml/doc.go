// Package foxml reads legacy objects from a directory of FOXML 1.1 exports.
//
// Every *.xml file in the directory is one object. An object's versions are
// the distinct creation instants of its datastream versions, oldest first;
// each version lists the datastream versions created at that instant.
package foxml
