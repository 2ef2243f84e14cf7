//go:build darwin

package vmem

/*
#cgo LDFLAGS: -framework CoreFoundation
#include <mach/mach.h>
#include <mach/mach_vm.h>
#include <mach/vm_region.h>

// vmemRegionRecurse wraps mach_vm_region_recurse, recursing into submaps
// until it reaches a leaf mapping.
static kern_return_t vmemRegionRecurse(mach_vm_address_t *address,
                                        mach_vm_size_t *size,
                                        natural_t *depth,
                                        vm_region_submap_info_data_64_t *info) {
	mach_msg_type_number_t count = VM_REGION_SUBMAP_INFO_COUNT_64;
	kern_return_t kr;
	for (;;) {
		kr = mach_vm_region_recurse(mach_task_self(), address, size, depth,
		                             (vm_region_recurse_info_t)info, &count);
		if (kr != KERN_SUCCESS) {
			return kr;
		}
		if (!info->is_submap) {
			return KERN_SUCCESS;
		}
		(*depth)++;
	}
}
*/
import "C"

import "fmt"

type darwinBackend struct {
	depth C.natural_t
}

func newRegionBackend() regionBackend {
	return &darwinBackend{}
}

func (b *darwinBackend) next(cursor, limit uintptr) (*Region, uintptr, error) {
	if cursor >= limit {
		return nil, cursor, nil
	}

	address := C.mach_vm_address_t(cursor)
	size := C.mach_vm_size_t(0)
	var info C.vm_region_submap_info_data_64_t

	kr := C.vmemRegionRecurse(&address, &size, &b.depth, &info)
	if kr != C.KERN_SUCCESS {
		if kr == C.KERN_INVALID_ADDRESS {
			return nil, cursor, nil // no more mapped regions
		}
		return nil, cursor, newErr("region_query", KindSyscall, fmt.Errorf("mach_vm_region_recurse: kern_return_t %d", kr))
	}

	base := uintptr(address)
	if base >= limit {
		return nil, cursor, nil
	}

	r := Region{
		base:       base,
		size:       uintptr(size),
		protection: fromNativeProt(int(info.protection)),
		shared:     info.share_mode != C.SM_PRIVATE || info.user_tag == C.VM_MEMORY_SHARED,
	}
	return &r, base + uintptr(size), nil
}
