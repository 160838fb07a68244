//go:build !arm64

package transferlist

// setRegisterArgs follows the register convention used by every target
// other than AArch64 EL: the FDT pointer always goes in r2.
func setRegisterArgs(ep *EntryPointInfo, dt uintptr, t *TL) {
	ep.Args.Arg0 = 0
	ep.Args.Arg1 = HandoffR1Value(RegisterConventionVersion)
	ep.Args.Arg2 = uint64(dt)
}
