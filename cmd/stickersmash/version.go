package main

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	if err := writef(v.r.stdout, "%s version %s\n", v.r.program, version); err != nil {
		return err
	}
	if commit != "" || date != "" {
		return writef(v.r.stdout, "commit %s built %s\n", commit, date)
	}
	return nil
}
