/*
Package atomicfile writes files so that readers see either the old content
or the complete new content, never a partial write.

Data goes to a temporary file in the destination directory. Close() syncs it
and renames it over the destination. If Write() or Close() fails, the
temporary file is removed and the destination is left untouched.

	err := atomicfile.WriteFile("appointments.json", data)

or, when streaming:

	f, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	// no-op after Close(), otherwise the destination is left untouched
	defer f.RemoveIfNotClosed()
	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Close()
*/
package atomicfile
