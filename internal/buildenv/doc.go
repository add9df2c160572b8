// Package buildenv models the firmware build configuration that the hooks
// mutate: a set of string options (for example custom_nanopb_protos) plus the
// substitution variables the host exposes, such as PROJECT_DIR.
//
// The host owns the configuration between runs. pbhook persists it as a small
// yaml file so that successive hook invocations in one build pass see each
// other's writes.
package buildenv
