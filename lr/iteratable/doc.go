/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around parser generators. These kinds of algorithms are often more straightforward
to describe as set constructions and operations, e.g. the closure of an item set.

Elements of a set have to be comparable values. Sets remember the order of insertion,
and iteration over a set will see elements which are added while iterating.
This is what fixed-point computations like

    C.IterateOnce()
    for C.Next() {
        item := C.Item()
        C.Union(expand(item))   // newly added items will be visited, too
    }

rely on.

Unusually, all set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
