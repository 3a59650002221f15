package repo

import "testing"

func TestCreateBranchPointsAtHead(t *testing.T) {
	r, fs := newTestRepo(t)
	h := commitFiles(t, r, fs, "one", map[string]string{"a.txt": "a"})

	mustNoErr(t, r.CreateBranch("dev"))
	got, ok, err := r.BranchHead("dev")
	mustNoErr(t, err)
	if !ok || got != h {
		t.Fatalf("dev = %s ok=%v, want %s", got, ok, h)
	}

	// Creating a branch does not switch to it.
	wantBranch(t, r, "master")

	branches, err := r.ListBranches()
	mustNoErr(t, err)
	wantList(t, "branches", branches, []string{"dev", "master"})
}

func TestCreateBranchDuplicate(t *testing.T) {
	r, _ := newTestRepo(t)
	mustNoErr(t, r.CreateBranch("dev"))

	err := r.CreateBranch("dev")
	wantErr(t, err, ErrBranchExists)
	wantMessage(t, err, "A branch with that name already exists.")
}

func TestCreateBranchRejectsBadNames(t *testing.T) {
	r, _ := newTestRepo(t)
	for _, name := range []string{"", " ", "/lead", "trail/", "a..b", "has space"} {
		if err := r.CreateBranch(name); err == nil {
			t.Errorf("CreateBranch(%q) succeeded", name)
		}
	}
	mustNoErr(t, r.CreateBranch("feature/x"))

	branches, err := r.ListBranches()
	mustNoErr(t, err)
	wantList(t, "branches", branches, []string{"feature/x", "master"})
}

func TestDeleteBranch(t *testing.T) {
	r, fs := newTestRepo(t)
	mustNoErr(t, r.CreateBranch("dev"))
	mustNoErr(t, r.CheckoutBranch("dev"))
	devHead := commitFiles(t, r, fs, "on dev", map[string]string{"d.txt": "d"})
	mustNoErr(t, r.CheckoutBranch("master"))

	mustNoErr(t, r.DeleteBranch("dev"))
	_, ok, err := r.BranchHead("dev")
	mustNoErr(t, err)
	if ok {
		t.Fatal("dev still exists")
	}

	// The commit itself survives.
	c, err := r.ReadCommit(devHead)
	mustNoErr(t, err)
	if c.Message != "on dev" {
		t.Fatalf("message = %q", c.Message)
	}
}

func TestDeleteBranchErrors(t *testing.T) {
	r, _ := newTestRepo(t)
	before := headHash(t, r)

	err := r.DeleteBranch("ghost")
	wantErr(t, err, ErrBranchNotFound)
	wantMessage(t, err, "A branch with that name does not exist.")

	err = r.DeleteBranch("master")
	wantErr(t, err, ErrRemoveCurrentBranch)
	wantMessage(t, err, "Cannot remove the current branch.")
	if got := headHash(t, r); got != before {
		t.Fatalf("head moved to %s", got)
	}
}
