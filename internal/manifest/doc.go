// Package manifest handles the optional pbhook.yaml file that sits next to a
// folder of schemas. It names the schema pairs to link, the link directory
// and the pbhook versions the folder was written for, and validates the file
// against an embedded JSON schema.
package manifest
